package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

// setFlagsFromEnv sets every flag not given on the command line from
// PREFIX_FLAG_NAME, if that variable is set.
func setFlagsFromEnv(flags *pflag.FlagSet, prefix string) error {
	var err error
	flags.VisitAll(func(f *pflag.Flag) {
		if err != nil || f.Changed {
			return
		}

		envVar := envVarName(prefix, f.Name)
		value, ok := os.LookupEnv(envVar)
		if !ok || value == "" {
			return
		}

		if setErr := flags.Set(f.Name, value); setErr != nil {
			err = errors.Wrapf(setErr, "invalid value %q in %s", value, envVar)
		}
	})
	return err
}

func envVarName(prefix, flag string) string {
	return fmt.Sprintf("%s_%s", prefix, strings.ReplaceAll(strings.ToUpper(flag), "-", "_"))
}
