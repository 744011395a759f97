package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSingleCommand(t *testing.T) {
	m, err := Parse("terrans build m -2x3")
	require.NoError(t, err)
	assert.Equal(t, "terrans", m.Player)
	require.Len(t, m.Commands, 1)
	assert.Equal(t, "build", m.Commands[0].Name)
	assert.Equal(t, []string{"m", "-2x3"}, m.Commands[0].Args)
}

func TestParseChain(t *testing.T) {
	m, err := Parse("gleens action power3. spend 4pw for 1q. federation 1x0,2x0,3x0 fed2.")
	require.NoError(t, err)
	require.Len(t, m.Commands, 3)
	assert.Equal(t, "action power3", m.Commands[0].String())
	assert.Equal(t, []string{"4pw", "for", "1q"}, m.Commands[1].Args)
	assert.Equal(t, []string{"1x0,2x0,3x0", "fed2"}, m.Commands[2].Args)
	assert.Equal(t, "gleens action power3. spend 4pw for 1q. federation 1x0,2x0,3x0 fed2", m.String())
}

func TestParseBareCommand(t *testing.T) {
	m, err := Parse("p1 pass")
	require.NoError(t, err)
	assert.Equal(t, "p1", m.Player)
	assert.Equal(t, "pass", m.Commands[0].Name)
	assert.Empty(t, m.Commands[0].Args)
	assert.Equal(t, "pass", m.Tail())
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{"", "terrans", "terrans . build"} {
		_, err := Parse(input)
		var pe *ParseError
		require.True(t, errors.As(err, &pe), "input %q", input)
		assert.Equal(t, input, pe.Input)
	}
}

func TestBadCommand(t *testing.T) {
	err := BadCommand("terrans build m", &SubCommand{Name: "build", Args: []string{"m"}}, nil)
	assert.EqualError(t, err, `cannot parse move "terrans build m" at "build m": the command must be: build <m|ts|lab|PI|ac1|ac2|gf> <hex>`)

	err = BadCommand("terrans fly", &SubCommand{Name: "fly"}, nil)
	assert.Contains(t, err.Error(), "unknown command fly")

	cause := errors.New("build takes 2 arguments, got 1")
	err = BadCommand("terrans build m", &SubCommand{Name: "build", Args: []string{"m"}}, cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "(build takes 2 arguments, got 1)")
}
