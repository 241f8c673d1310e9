/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package common

import (
	"strings"

	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/verifiedid-go/internal/logfields"
)

const (
	// LogLevelFlagName is the flag name used for setting the default log level.
	LogLevelFlagName = "log-level"
	// LogLevelEnvKey is the env var name used for setting the default log level.
	LogLevelEnvKey = "WALLET_CLI_LOG_LEVEL"
	// LogLevelFlagShorthand is the shorthand flag name used for setting the default log level.
	LogLevelFlagShorthand = "l"
	// LogLevelPrefixFlagUsage is the usage text for the log level flag.
	LogLevelPrefixFlagUsage = "Sets the default logging level. " +
		"Supported levels are: CRITICAL, ERROR, WARNING, INFO, DEBUG. " +
		"Defaults to warning if not set. Alternatively, this can be set with the following environment variable: " +
		LogLevelEnvKey
)

// SetDefaultLogLevel sets the default log level. An empty level keeps warnings and errors only.
func SetDefaultLogLevel(logger *log.Log, userLogLevel string) {
	if strings.TrimSpace(userLogLevel) == "" {
		log.SetLevel("", log.WARNING)

		return
	}

	logLevel, err := log.ParseLevel(userLogLevel)
	if err != nil {
		logger.Warn(`User log level is not a valid. It must be one of the following: `+
			log.PANIC.String()+", "+
			log.FATAL.String()+", "+
			log.ERROR.String()+", "+
			log.WARNING.String()+", "+
			log.INFO.String()+", "+
			log.DEBUG.String()+". Defaulting to warning.", logfields.WithUserLogLevel(userLogLevel))

		logLevel = log.WARNING
	} else if logLevel == log.DEBUG {
		logger.Info(`Log level set to "debug". Request and response bodies may be logged.`)
	}

	log.SetLevel("", logLevel)
}
