package config

import "github.com/sirupsen/logrus"

// ConfigureLogging sets the global logrus level and formatter: JSON lines in
// prod, colourless text with full timestamps elsewhere.
func ConfigureLogging(env, level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
	if env == "prod" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
}
