/*
Copyright © 2024 the geowave authors.
This file is part of geowave.

geowave is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

geowave is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with geowave.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package postgis starts PostGIS databases for tests that check geowave's
// geodesic calculations against PostGIS.
package postgis

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v4"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// EnvVar must be set to a non-empty value for SetupTestDB to start a
// container. Otherwise the calling test is skipped.
const EnvVar = "GEOWAVE_POSTGIS"

// Image is the PostGIS image used when EnvVar does not name one.
const Image = "postgis/postgis:16-3.4"

// SetupTestDB starts a new PostGIS database for testing and returns a
// connection to it and the running Docker container. The test is skipped
// when EnvVar is unset or -short is given. If EnvVar holds an image name
// other than "1" or "true", that image is used instead of Image.
func SetupTestDB(ctx context.Context, t *testing.T) (*pgx.Conn, testcontainers.Container) {
	t.Helper()
	env := os.Getenv(EnvVar)
	if env == "" || testing.Short() {
		t.Skipf("set %s to run tests against PostGIS", EnvVar)
	}
	image := Image
	if env != "1" && env != "true" {
		image = env
	}
	const (
		dbname = "geowave"
		dbuser = "postgres"
		dbport = "5432"
	)

	req := testcontainers.ContainerRequest{
		Image:        image,
		ExposedPorts: []string{fmt.Sprintf("%s/tcp", dbport)},
		Env: map[string]string{
			"POSTGRES_DB":               dbname,
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
	}
	postgresC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatal(err)
	}

	host, err := postgresC.Host(ctx)
	if err != nil {
		t.Fatal(err)
	}
	// Get the port that is mapped to 5432.
	p, err := postgresC.MappedPort(ctx, dbport)
	if err != nil {
		t.Fatal(err)
	}
	url := fmt.Sprintf("postgres://%s@%s:%s/%s", dbuser, host, p.Port(), dbname)

	var conn *pgx.Conn
	err = backoff.Retry(func() error {
		conn, err = pgx.Connect(ctx, url)
		return err
	}, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 10))
	if err != nil {
		t.Fatal(err)
	}

	if _, err = conn.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS postgis"); err != nil {
		t.Fatal(err)
	}
	return conn, postgresC
}
