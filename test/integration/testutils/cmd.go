package testutils

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
)

// envPrefix is the prefix of the variables the binary reads its config from.
const envPrefix = "JIFFYBOX_"

// RunJiffyBox executes a jiffybox command, the arguments are split on whitespace.
// Use RunJiffyBoxArgs when an argument contains spaces.
func RunJiffyBox(ctx context.Context, env []string, binary, cmdArgs string, nolog bool) (stdout, stderr []byte, err error) {
	return RunJiffyBoxArgs(ctx, env, binary, strings.Fields(cmdArgs), nolog)
}

// RunJiffyBoxArgs executes a jiffybox command with pre-split arguments.
//
// Inherited JIFFYBOX_* variables are dropped so the developer's own account
// config never leaks into a test run, only env configures the binary.
func RunJiffyBoxArgs(ctx context.Context, env []string, binary string, args []string, nolog bool) (stdout, stderr []byte, err error) {
	if nolog {
		args = append([]string{"--no-log"}, args...)
	}

	var outData, errData bytes.Buffer
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Stdout = &outData
	cmd.Stderr = &errData
	cmd.Env = append(cleanEnviron(), env...)

	err = cmd.Run()

	return outData.Bytes(), errData.Bytes(), err
}

func cleanEnviron() []string {
	environ := os.Environ()
	clean := make([]string, 0, len(environ))
	for _, kv := range environ {
		if strings.HasPrefix(kv, envPrefix) {
			continue
		}
		clean = append(clean, kv)
	}
	return clean
}
