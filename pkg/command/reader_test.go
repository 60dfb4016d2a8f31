package command

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cmd, err := Parse("::set-output name=greeting::hello\n")
	require.NoError(t, err)
	require.Equal(t, SetOutput, cmd.Name)
	require.Equal(t, []Property{{Key: "name", Value: "greeting"}}, cmd.Properties)
	require.Equal(t, "hello", cmd.Payload)
}

func TestParse_NoProperties(t *testing.T) {
	cmd, err := Parse("::add-mask::super secret message")
	require.NoError(t, err)
	require.Equal(t, AddMask, cmd.Name)
	require.Empty(t, cmd.Properties)
	require.Equal(t, "super secret message", cmd.Payload)
}

func TestParse_Unescapes(t *testing.T) {
	cmd, err := Parse("::error file=C%3A/a%2Cb.go,line=5::multi%0Aline 100%25")
	require.NoError(t, err)
	require.Equal(t, []Property{{Key: "file", Value: "C:/a,b.go"}, {Key: "line", Value: "5"}}, cmd.Properties)
	require.Equal(t, "multi\nline 100%", cmd.Payload)
}

func TestParse_PayloadWithSeparator(t *testing.T) {
	cmd, err := Parse("::warning::a::b")
	require.NoError(t, err)
	require.Equal(t, "a::b", cmd.Payload)
}

func TestParse_Errors(t *testing.T) {
	for _, line := range []string{
		"plain output",
		":: not closed",
		"::::payload",
		"::cmd novalue::x",
		"::cmd =v::x",
		" ::cmd::x",
	} {
		_, err := Parse(line)
		require.True(t, errors.Is(err, ErrNotCommand), "line %q", line)
	}
}

func TestParse_EncodeRoundTrip(t *testing.T) {
	for _, s := range escapeSamples {
		props := []Property{{Key: "name", Value: s}, {Key: "other", Value: "x"}}
		cmd, err := Parse(Encode(SetEnv, props, s))
		require.NoError(t, err)
		require.Equal(t, Command{Name: SetEnv, Properties: props, Payload: s}, cmd)
	}
}

func TestReader_PlainAndCommands(t *testing.T) {
	input := "building...\n::set-output name=a::1\ndone\n::warning::careful"
	reader := NewReader(strings.NewReader(input))

	var lines []Line
	for line := range reader.Channel() {
		require.NoError(t, line.Error)
		lines = append(lines, line)
	}

	require.Len(t, lines, 4)
	require.Nil(t, lines[0].Command)
	require.Equal(t, "building...", lines[0].Raw)
	require.NotNil(t, lines[1].Command)
	require.Equal(t, SetOutput, lines[1].Command.Name)
	require.Nil(t, lines[2].Command)
	require.NotNil(t, lines[3].Command)
	require.Equal(t, "careful", lines[3].Command.Payload)
}

func TestReader_StopCommands(t *testing.T) {
	input := strings.Join([]string{
		"::stop-commands::tok-1",
		"::set-output name=ignored::x",
		"::stop-commands::other",
		"::tok-1::",
		"::set-output name=seen::y",
		"",
	}, "\n")

	cmds, err := NewReader(strings.NewReader(input)).Commands()
	require.NoError(t, err)
	require.Len(t, cmds, 3)
	require.Equal(t, StopCommands, cmds[0].Name)
	require.Equal(t, "tok-1", cmds[0].Payload)
	require.Equal(t, "tok-1", cmds[1].Name)
	require.Equal(t, "", cmds[1].Payload)
	v, _ := cmds[2].Property("name")
	require.Equal(t, "seen", v)
}

func TestReader_Stopped(t *testing.T) {
	reader := NewReader(strings.NewReader("::stop-commands::t\n::t::\n"))
	require.False(t, reader.Stopped())

	_, err := reader.Next()
	require.NoError(t, err)
	require.True(t, reader.Stopped())

	_, err = reader.Next()
	require.NoError(t, err)
	require.False(t, reader.Stopped())

	_, err = reader.Next()
	require.Equal(t, io.EOF, err)
}

func TestReader_CRLF(t *testing.T) {
	cmds, err := NewReader(strings.NewReader("::debug::a\r\n::debug::b\r\n")).Commands()
	require.NoError(t, err)
	require.Len(t, cmds, 2)
	require.Equal(t, "a", cmds[0].Payload)
	require.Equal(t, "b", cmds[1].Payload)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestReader_ReadError(t *testing.T) {
	_, err := NewReader(failingReader{}).Commands()
	require.Error(t, err)
	require.Contains(t, err.Error(), "broken pipe")
}
