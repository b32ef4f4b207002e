package main

import (
	"github.com/sirupsen/logrus"

	server_config "github.com/carson-networks/finance-tracker/internal/config"
	"github.com/carson-networks/finance-tracker/internal/storage/postgres"
)

func main() {
	env, err := server_config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("ProcessEnvironmentVariables")
		return
	}

	store, err := postgres.Open(env.PostgresURL())
	if err != nil {
		logrus.WithError(err).Fatal("postgres.Open")
		return
	}
	defer store.Close()

	result, err := postgres.Migrate(store.DB())
	if err != nil {
		logrus.WithError(err).Fatal("postgres.Migrate")
		return
	}

	logrus.WithFields(logrus.Fields{
		"preMigrationVersion":  result.PreMigrationVersion,
		"postMigrationVersion": result.PostMigrationVersion,
	}).Info("Migration status")
}
