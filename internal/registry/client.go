package registry

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"
)

// Record is the registry's view of a registered vehicle.
type Record struct {
	RegistrationNumber string
	VehicleType        string
	Manufacturer       string
	Model              string
	Year               int
	OwnerName          string
	RoadTaxExpiry      *time.Time
	InsuranceExpiry    *time.Time
	PUCExpiry          *time.Time
	FitnessExpiry      *time.Time
}

// Client looks up vehicle registration data from the government registry.
type Client interface {
	Lookup(ctx context.Context, registrationNumber string) (Record, error)
}

var (
	manufacturers = []string{"TATA", "Ashok Leyland", "Mahindra", "Eicher", "BharatBenz"}
	truckModels   = []string{"LPT 1918", "2518", "Blazo X", "Pro 6025", "1617R"}
)

// mockClient simulates the registry with randomized but plausible data. The
// real registry (VAHAN) has no public API, so document dates are generated
// around the current date to exercise every compliance state.
type mockClient struct {
	mu   sync.Mutex
	rand *rand.Rand
	now  func() time.Time
}

// MockOption customises the mock client.
type MockOption func(*mockClient)

// WithSeed makes the mock deterministic for tests.
func WithSeed(seed int64) MockOption {
	return func(c *mockClient) {
		c.rand = rand.New(rand.NewSource(seed))
	}
}

// WithClock overrides the clock the mock dates its documents against.
func WithClock(now func() time.Time) MockOption {
	return func(c *mockClient) {
		if now != nil {
			c.now = now
		}
	}
}

// NewMockClient returns a registry client backed by generated data.
func NewMockClient(opts ...MockOption) Client {
	c := &mockClient{
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *mockClient) Lookup(ctx context.Context, registrationNumber string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	base := c.now().UTC()
	return Record{
		RegistrationNumber: strings.ToUpper(strings.TrimSpace(registrationNumber)),
		VehicleType:        "Commercial Vehicle",
		Manufacturer:       manufacturers[c.rand.Intn(len(manufacturers))],
		Model:              truckModels[c.rand.Intn(len(truckModels))],
		Year:               2015 + c.rand.Intn(10),
		OwnerName:          "Fleet Owner",
		RoadTaxExpiry:      c.offsetDate(base, -30, 90),
		InsuranceExpiry:    c.offsetDate(base, -30, 120),
		PUCExpiry:          c.offsetDate(base, -30, 60),
		FitnessExpiry:      c.offsetDate(base, 365, 365),
	}, nil
}

// offsetDate returns base shifted by a random number of days in [min, max].
func (c *mockClient) offsetDate(base time.Time, min, max int) *time.Time {
	days := min
	if max > min {
		days += c.rand.Intn(max - min + 1)
	}
	d := base.AddDate(0, 0, days)
	return &d
}
