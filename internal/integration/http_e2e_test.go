//go:build integration || !unit

package integration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"travelguide/internal/adapters/apiclient"
	server "travelguide/internal/adapters/http_server"
	redisad "travelguide/internal/adapters/redis"
	"travelguide/internal/adapters/uploads"
	"travelguide/internal/adapters/views"
	"travelguide/internal/app"
	"travelguide/internal/domain"
	mysqlrepo "travelguide/internal/storage/mysql"
)

func pstr(s string) *string { return &s }

func TestHTTP_EndToEnd_MySQLAndRedis(t *testing.T) {
	// Start isolated MySQL container
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=travelguide",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:%s@tcp(127.0.0.1:%s)/%s?parseTime=true&charset=utf8mb4,utf8&loc=UTC",
		"root", hostPort, "travelguide")

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	if err := mysqlrepo.Migrate(ctx, db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	repo := mysqlrepo.New(db)
	if err := repo.Seed(ctx, domain.DefaultSeed()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	mr := miniredis.RunT(t)
	cache := redisad.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = cache.Close() })

	rd, err := views.New()
	if err != nil {
		t.Fatalf("views: %v", err)
	}
	srv := server.New()
	srv.MountHandlers(&server.Handlers{
		Catalog:     app.NewCatalogService(repo, cache, time.Minute),
		Uploads:     uploads.NewDiskSink(t.TempDir()),
		Views:       rd,
		AccessToken: "your_secret_token",
	})
	ts := httptest.NewServer(srv.Mux())
	defer ts.Close()

	cl, err := apiclient.New(ts.URL, 100)
	if err != nil {
		t.Fatalf("client: %v", err)
	}

	// read-through: first GET fills redis
	d, err := cl.GetDestination(ctx, 1)
	if err != nil || *d.Name != "Paris" {
		t.Fatalf("get: %+v %v", d, err)
	}
	if len(mr.Keys()) == 0 {
		t.Fatalf("expected a cached key after GET")
	}

	created, err := cl.CreateDestination(ctx, domain.Destination{Name: pstr("Lisbon"), Image: pstr("/images/lisbon.jpg")})
	if err != nil || created.ID != 4 {
		t.Fatalf("create: %+v %v", created, err)
	}
	got, err := cl.GetDestination(ctx, 4)
	if err != nil || *got.Name != "Lisbon" || got.Description != nil {
		t.Fatalf("get created: %+v %v", got, err)
	}

	found, err := cl.ListDestinations(ctx, "lis")
	if err != nil || len(found) != 1 || found[0].ID != 4 {
		t.Fatalf("filter: %+v %v", found, err)
	}

	if _, err := cl.GetDestination(ctx, 77); !errors.Is(err, apiclient.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
