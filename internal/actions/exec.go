package actions

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/footprint-tools/routeshell/internal/dispatchers"
	"github.com/footprint-tools/routeshell/internal/route"
	"github.com/footprint-tools/routeshell/internal/ui"
)

// ExecPrefix marks handler references that run an external program, as in
// handler = "exec:./deploy.sh {env}".
const ExecPrefix = "exec:"

// ExecLocator resolves "exec:" handler references. It lets manifest routes
// point at scripts without any Go code behind them.
type ExecLocator struct {
	// Env is appended to the process environment of every command.
	Env []string
}

func (l ExecLocator) Has(key string) bool {
	return strings.HasPrefix(key, ExecPrefix) && strings.TrimSpace(key[len(ExecPrefix):]) != ""
}

func (l ExecLocator) Get(key string) (any, error) {
	if !l.Has(key) {
		return nil, fmt.Errorf("exec: %q is not an exec handler", key)
	}
	return Exec(strings.Fields(key[len(ExecPrefix):]), l.Env), nil
}

var _ dispatchers.Locator = ExecLocator{}

// Exec runs argv with the matched parameters substituted. An argument of the
// form {name} is replaced by the value of name, or dropped when name is
// unbound. Leftover tokens are appended, and every bound parameter is also
// exported as ROUTESHELL_PARAM_<NAME>. The exit status of the program is the
// exit status of the command.
func Exec(argv []string, env []string) dispatchers.Handler {
	return dispatchers.HandlerFunc(func(ctx context.Context, req *dispatchers.Request) int {
		args := append(expandArgs(argv[1:], req.Params), req.Params.Rest()...)

		cmd := exec.CommandContext(ctx, argv[0], args...)
		cmd.Stdin = os.Stdin
		cmd.Stdout = consoleWriter{req.Console}
		cmd.Stderr = consoleWriter{req.Console}
		cmd.Env = append(append(os.Environ(), env...), paramEnv(req)...)

		err := cmd.Run()
		var exitErr *exec.ExitError
		switch {
		case err == nil:
			return 0
		case errors.As(err, &exitErr):
			return exitErr.ExitCode()
		case errors.Is(err, exec.ErrNotFound):
			dispatchers.ReportError(req.Console, err)
			return 127
		default:
			return dispatchers.ReportError(req.Console, err)
		}
	})
}

func expandArgs(argv []string, p route.Params) []string {
	out := make([]string, 0, len(argv))
	for _, arg := range argv {
		if len(arg) > 2 && arg[0] == '{' && arg[len(arg)-1] == '}' {
			v, ok := p.Get(arg[1 : len(arg)-1])
			if !ok {
				continue
			}
			out = append(out, fmt.Sprint(v))
			continue
		}
		out = append(out, arg)
	}
	return out
}

func paramEnv(req *dispatchers.Request) []string {
	var env []string
	if req.Route != nil {
		env = append(env, "ROUTESHELL_ROUTE="+req.Route.Name())
	}
	for name, v := range req.Params.Values() {
		key := strings.ToUpper(strings.NewReplacer("-", "_", ".", "_").Replace(name))
		env = append(env, fmt.Sprintf("ROUTESHELL_PARAM_%s=%v", key, v))
	}
	return env
}

// consoleWriter forwards process output to a console.
type consoleWriter struct {
	c ui.Console
}

func (w consoleWriter) Write(p []byte) (int, error) {
	w.c.Write(string(p))
	return len(p), nil
}
