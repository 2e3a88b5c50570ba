package maincmd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateNoArgs(t *testing.T) {
	c := &Cmd{}
	c.SetArgs(nil)
	require.Error(t, c.Validate())
}

func TestValidateHelpOrVersionBypassesArgCheck(t *testing.T) {
	c := &Cmd{Help: true}
	c.SetArgs(nil)
	require.NoError(t, c.Validate())

	c = &Cmd{Version: true}
	c.SetArgs(nil)
	require.NoError(t, c.Validate())
}

func TestValidateTooManyArgs(t *testing.T) {
	c := &Cmd{}
	c.SetArgs([]string{"a.o", "out.acs", "extra"})
	require.Error(t, c.Validate())
}

func TestValidateOneOrTwoArgsOK(t *testing.T) {
	c := &Cmd{}
	c.SetArgs([]string{"a.o"})
	require.NoError(t, c.Validate())

	c = &Cmd{}
	c.SetArgs([]string{"a.o", "out.acs"})
	require.NoError(t, c.Validate())
}

func TestValidateFormatRequiresKnownValue(t *testing.T) {
	c := &Cmd{Format: "xml"}
	c.SetArgs([]string{"a.o"})
	require.Error(t, c.Validate())
}

func TestValidateYamlFormatRequiresDisas(t *testing.T) {
	c := &Cmd{Format: "yaml"}
	c.SetArgs([]string{"a.o"})
	require.Error(t, c.Validate())

	c = &Cmd{Format: "yaml", Disas: true}
	c.SetArgs([]string{"a.o"})
	require.NoError(t, c.Validate())
}

func TestValidateTextFormatWithoutDisasOK(t *testing.T) {
	c := &Cmd{Format: "text"}
	c.SetArgs([]string{"a.o"})
	require.NoError(t, c.Validate())
}
