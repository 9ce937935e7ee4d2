package settings

import (
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
)

// Production is the APP_ENV value that switches defaults to
// production output.
const Production = "production"

// Env is the part of the process environment settings depend on.
type Env struct {
	Level  string `env:"LOG_LEVEL"`
	Filter string `env:"LOG_FILTER"`
	Pretty string `env:"LOG_PRETTY"`
	AppEnv string `env:"APP_ENV" envDefault:"development"`
	// IsTTY reports whether stdout is a terminal.
	IsTTY bool `env:"-"`
}

// Production reports whether APP_ENV selects production defaults.
func (e Env) Production() bool {
	return e.AppEnv == Production
}

// LoadEnv reads the environment of the current process. Named dotenv
// files are loaded first and must exist; with none given a .env file in
// the working directory is loaded if present. Variables already set in
// the process take precedence over dotenv files.
func LoadEnv(files ...string) (Env, error) {
	if len(files) > 0 {
		if err := godotenv.Load(files...); err != nil {
			return Env{}, errors.Wrapf(err, "failed to load env files %s", strings.Join(files, ", "))
		}
	} else {
		// A missing .env is fine.
		_ = godotenv.Load()
	}

	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, errors.Wrapf(err, "failed to parse environment")
	}
	e.IsTTY = isTerminal(os.Stdout)
	return e, nil
}

// EnvFrom builds an Env from an explicit variable set instead of the
// process environment. IsTTY is left false.
func EnvFrom(vars map[string]string) (Env, error) {
	var e Env
	if err := env.ParseWithOptions(&e, env.Options{Environment: vars}); err != nil {
		return Env{}, errors.Wrapf(err, "failed to parse environment")
	}
	return e, nil
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
