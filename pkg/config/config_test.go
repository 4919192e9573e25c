package config

import "testing"

func TestGetDSN(t *testing.T) {
	c := &Config{}
	c.Postgres.Name = "feedcore"
	c.Postgres.User = "feed"
	c.Postgres.Pass = "secret"
	c.Postgres.Host = "localhost"
	c.Postgres.Port = 5432
	c.Postgres.SslMode = "disable"

	want := "dbname=feedcore user=feed password=secret host=localhost port=5432 sslmode=disable"
	if got := c.GetDSN(); got != want {
		t.Fatalf("GetDSN = %q, want %q", got, want)
	}
}
