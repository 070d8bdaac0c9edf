// AngelaMos | 2026
// seed.go

// Package seed prepares the store at process start: it applies the schema
// and, when asked, loads a fixed demo dataset into an empty store.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"

	"github.com/carterperez-dev/site-atlas/internal/store"
)

const (
	sitesPerCustomer = 10
	jitterDegrees    = 0.08
)

var presidents = []string{"Washington", "Jefferson", "Lincoln", "Roosevelt", "Kennedy"}

type town struct {
	name string
	lat  float64
	lng  float64
}

var towns = []town{
	{"Corning", 39.9271, -122.1792},
	{"Orland", 39.7471, -122.1969},
	{"Chico", 39.7285, -121.8375},
	{"Cottonwood", 40.3863, -122.2803},
	{"Durham", 39.6468, -121.8005},
}

type Options struct {
	Seed       bool
	Categories []string
}

type Dataset struct {
	Customers []store.Customer
	Sites     []store.Site
	Jobs      []store.Job
}

// Bootstrap applies the schema and seeds an empty store. It is safe to
// run on every start: a store holding any customer, active or deleted, is
// never seeded again.
func Bootstrap(ctx context.Context, st *store.Store, opts Options) (bool, error) {
	if err := store.Migrate(ctx, st.DB()); err != nil {
		return false, fmt.Errorf("bootstrap: %w", err)
	}
	if !opts.Seed {
		return false, nil
	}

	data := Generate(opts.Categories)
	seeded := false

	err := st.InTx(ctx, func(r store.Repositories) error {
		counts, err := r.Customers.Count(ctx)
		if err != nil {
			return err
		}
		if counts.Active+counts.Deleted > 0 {
			return nil
		}

		for i := range data.Customers {
			if err := r.Customers.Create(ctx, &data.Customers[i]); err != nil {
				return err
			}
		}
		for i := range data.Sites {
			if err := r.Sites.Create(ctx, &data.Sites[i]); err != nil {
				return err
			}
		}
		for i := range data.Jobs {
			if err := r.Jobs.Create(ctx, &data.Jobs[i]); err != nil {
				return err
			}
		}

		seeded = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("seed: %w", err)
	}

	if seeded {
		slog.InfoContext(ctx, "store seeded",
			"customers", len(data.Customers),
			"sites", len(data.Sites),
			"jobs", len(data.Jobs),
		)
	}

	return seeded, nil
}

// Generate builds the demo dataset. Output, ids included, is identical on
// every call.
func Generate(categories []string) Dataset {
	//nolint:gosec // G404: demo coordinates, fixed seed on purpose
	rnd := rand.New(rand.NewPCG(42, 42))

	var d Dataset
	for _, p := range presidents {
		c := store.Customer{
			ID:   stableID("customer", p),
			Name: p + " Water Co",
		}
		d.Customers = append(d.Customers, c)

		for i := range sitesPerCustomer {
			t := towns[i%len(towns)]
			s := store.Site{
				ID:         stableID("site", p, t.name, fmt.Sprint(i+1)),
				CustomerID: c.ID,
				Name:       fmt.Sprintf("%s Site %d", t.name, i+1),
				Latitude:   t.lat + (rnd.Float64()-0.5)*jitterDegrees,
				Longitude:  t.lng + (rnd.Float64()-0.5)*jitterDegrees,
			}
			d.Sites = append(d.Sites, s)

			for _, cat := range categories {
				number := fmt.Sprintf("%s-%d-%s", abbrev(t.name), i+1, abbrev(cat))
				d.Jobs = append(d.Jobs, store.Job{
					ID:        stableID("job", s.ID, number),
					SiteID:    s.ID,
					JobNumber: number,
					Category:  cat,
					Status:    store.DefaultJobStatus,
				})
			}
		}
	}

	return d
}

func abbrev(s string) string {
	r := []rune(strings.ToUpper(s))
	if len(r) > 3 {
		r = r[:3]
	}
	return string(r)
}

func stableID(parts ...string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("site-atlas:"+strings.Join(parts, "/"))).String()
}
