package lang

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForFile(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"hello.py", "python"},
		{"hello.c", "c"},
		{"hello.cpp", "cpp"},
		{"hello.cxx", "cpp"},
		{"hello.cc", "cpp"},
		{"Hello.java", "java"},
		{"/some/dir/HELLO.PY", "python"},
	}

	for _, tc := range cases {
		l, err := ForFile(tc.path)
		require.NoError(t, err, tc.path)
		assert.Equal(t, tc.want, l.Name, tc.path)
	}
}

func TestForFileUnsupported(t *testing.T) {
	for _, path := range []string{"hello.rb", "hello", "archive.tar.gz"} {
		_, err := ForFile(path)
		require.Error(t, err, path)
		assert.ErrorIs(t, err, ErrUnsupported)
	}
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("a.py"))
	assert.True(t, Supported("b.CPP"))
	assert.False(t, Supported("c.rb"))
	assert.False(t, Supported("noext"))
}

func TestCompileCommand(t *testing.T) {
	art := t.TempDir()

	c := C.CompileCommand("/work/main.c", art)
	require.Equal(t, []string{"gcc", "/work/main.c", "-o", filepath.Join(art, "main.out")}, c)

	cpp := CPP.CompileCommand("/work/main.cpp", art)
	require.Equal(t, []string{"g++", "/work/main.cpp", "-o", filepath.Join(art, "main.out")}, cpp)

	java := Java.CompileCommand("/work/Main.java", art)
	require.Equal(t, []string{"javac", "-d", art, "/work/Main.java"}, java)

	assert.Nil(t, Python.CompileCommand("/work/main.py", art))
}

func TestRunCommand(t *testing.T) {
	art := t.TempDir()

	py := Python.RunCommand("/work/main.py", art)
	require.Len(t, py, 2)
	assert.Contains(t, py[0], "python")
	assert.Equal(t, "/work/main.py", py[1])

	c := C.RunCommand("/work/main.c", art)
	require.Equal(t, []string{filepath.Join(art, "main.out")}, c)

	java := Java.RunCommand("/work/Main.java", art)
	require.Equal(t, []string{"java", "-cp", art, "Main"}, java)
}
