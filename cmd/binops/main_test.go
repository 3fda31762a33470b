package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/born-ml/binops/internal/tensor"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "binops "+version+"\n", out)
}

func TestKernelsCmd(t *testing.T) {
	out, err := execute(t, "kernels")
	require.NoError(t, err)
	assert.Contains(t, out, "OP")
	for _, op := range []string{"add", "div", "atan2", "logical_xor", "ne"} {
		assert.Contains(t, out, op)
	}
	assert.Contains(t, out, "generic")
}

func TestEvalCmd(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"add with alpha", []string{"add", "1,2,3", "4,5,6", "--alpha", "2"}, "int32 [9 12 15]"},
		{"rsub", []string{"rsub", "1,2", "10,20"}, "int32 [9 18]"},
		{"sub scalar", []string{"sub", "1,2", "3", "--scalar", "--dtype", "int8"}, "int8 [-2 -1]"},
		{"mixed dtypes", []string{"mul", "1.5,2", "2,3", "--dtype", "float32", "--rhs-dtype", "int64"}, "float32 [3 6]"},
		{"int division truncates", []string{"div", "7,-7", "2"}, "int32 [3 -3]"},
		{"atan2 promotes ints", []string{"atan2", "0", "1"}, "float32 [0]"},
		{"logical_xor", []string{"logical_xor", "true,false", "true", "--dtype", "bool", "--scalar"}, "bool [false true]"},
		{"lt scalar", []string{"lt", "1,2,3", "2", "--scalar"}, "bool [true false false]"},
		{"ge broadcast", []string{"ge", "1,2,3", "2"}, "bool [false true true]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, append([]string{"eval"}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want+"\n", out)
		})
	}
}

func TestEvalCmdErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"scalar out of range", []string{"lt", "1,2", "1000", "--scalar", "--dtype", "int8"}, tensor.ErrConversion},
		{"division by zero", []string{"div", "1,2", "0,1"}, tensor.ErrDivisionByZero},
		{"bool subtraction", []string{"sub", "true", "false", "--dtype", "bool"}, tensor.ErrUnsupportedOperation},
		{"float alpha on ints", []string{"add", "1", "2", "--alpha", "0.5"}, tensor.ErrTypeMismatch},
		{"shape mismatch", []string{"add", "1,2", "1,2,3"}, tensor.ErrShapeMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, append([]string{"eval"}, tt.args...)...)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := execute(t, "eval", "pow", "1", "2")
	assert.ErrorContains(t, err, `unknown operation "pow"`)

	_, err = execute(t, "eval", "add", "1", "2", "--dtype", "complex64")
	assert.ErrorContains(t, err, "unknown dtype")

	_, err = execute(t, "eval", "add", "1,x", "2")
	assert.ErrorContains(t, err, "LHS")

	_, err = execute(t, "eval", "add", "1")
	assert.Error(t, err)
}

func TestConfigFlag(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.yaml")
	require.NoError(t, os.WriteFile(good, []byte("parallel:\n  enabled: false\nkernels:\n  vectorize: false\n"), 0o600))
	out, err := execute(t, "--config", good, "kernels")
	require.NoError(t, err)
	assert.NotContains(t, out, "vecmath")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("parallel:\n  threads: 4\n"), 0o600))
	_, err = execute(t, "--config", bad, "version")
	assert.Error(t, err)

	out, err = execute(t, "--config", filepath.Join(dir, "missing.yaml"), "-v", "eval", "mul", "2", "3")
	require.NoError(t, err)
	assert.Equal(t, "int32 [6]\n", out)
}
