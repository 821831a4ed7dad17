// Package identity rotates through canned sandbox verification subjects.
//
// The upstream credit bureau and record providers operate only against
// pre-registered sandbox profiles, never the real applicant's PII. Rotating a
// small pool per check type keeps repeated demo runs varied but reproducible,
// with the pools deliberately mixing clean and adverse subjects so both code
// paths see traffic.
package identity

import "sync"

// CheckType identifies one of the sandbox-backed screening checks.
type CheckType string

const (
	CheckFraud    CheckType = "fraud"
	CheckIdentity CheckType = "identity"
	CheckCredit   CheckType = "credit"
	CheckCriminal CheckType = "criminal"
	CheckEviction CheckType = "eviction"
)

// Profile is one canned sandbox subject. The fields mirror what the provider
// expects when addressing a pre-registered record.
type Profile struct {
	FirstName string
	LastName  string
	SSN       string
	BirthDate string
	// Adverse marks profiles seeded to return negative results.
	Adverse bool
}

// Rotation holds one counter per check type and hands out pool entries
// round-robin. State is process-wide and shared across requests; the mutex
// keeps the rotation strict under concurrent submissions.
type Rotation struct {
	mu       sync.Mutex
	counters map[CheckType]int
	pools    map[CheckType][]Profile
}

// NewRotation builds a rotation over the default sandbox pools.
func NewRotation() *Rotation {
	return NewRotationWithPools(defaultPools())
}

// NewRotationWithPools builds a rotation over caller-supplied pools.
// Intended for tests that need deterministic single-entry pools.
func NewRotationWithPools(pools map[CheckType][]Profile) *Rotation {
	return &Rotation{
		counters: make(map[CheckType]int),
		pools:    pools,
	}
}

// Next returns the next profile for the given check and advances its counter.
// The second return is false when no pool exists for the check.
func (r *Rotation) Next(check CheckType) (Profile, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pool := r.pools[check]
	if len(pool) == 0 {
		return Profile{}, false
	}
	p := pool[r.counters[check]%len(pool)]
	r.counters[check]++
	return p, true
}

// defaultPools seeds each check with 3-5 sandbox subjects registered with the
// provider's test environment, split between clean and adverse outcomes.
func defaultPools() map[CheckType][]Profile {
	return map[CheckType][]Profile{
		CheckFraud: {
			{FirstName: "Laura", LastName: "Nowak", SSN: "666-10-1001", BirthDate: "1988-04-12"},
			{FirstName: "Victor", LastName: "Reyes", SSN: "666-10-1002", BirthDate: "1979-11-30", Adverse: true},
			{FirstName: "Priya", LastName: "Nair", SSN: "666-10-1003", BirthDate: "1993-06-21"},
		},
		CheckIdentity: {
			{FirstName: "Marcus", LastName: "Bell", SSN: "666-20-2001", BirthDate: "1985-02-09"},
			{FirstName: "Ingrid", LastName: "Olsen", SSN: "666-20-2002", BirthDate: "1990-08-17"},
			{FirstName: "Tomas", LastName: "Vargas", SSN: "666-20-2003", BirthDate: "1972-12-03", Adverse: true},
			{FirstName: "Ayesha", LastName: "Khan", SSN: "666-20-2004", BirthDate: "1996-01-25"},
		},
		CheckCredit: {
			{FirstName: "Dana", LastName: "Whitfield", SSN: "666-30-3001", BirthDate: "1983-09-14"},
			{FirstName: "Oleg", LastName: "Petrov", SSN: "666-30-3002", BirthDate: "1969-05-02", Adverse: true},
			{FirstName: "Renee", LastName: "Castillo", SSN: "666-30-3003", BirthDate: "1991-03-28"},
			{FirstName: "Hugh", LastName: "Mercer", SSN: "666-30-3004", BirthDate: "1987-07-07"},
		},
		CheckCriminal: {
			{FirstName: "Sofia", LastName: "Lindqvist", SSN: "666-40-4001", BirthDate: "1994-10-19"},
			{FirstName: "Darnell", LastName: "Pratt", SSN: "666-40-4002", BirthDate: "1981-01-11", Adverse: true},
			{FirstName: "Mei", LastName: "Tanaka", SSN: "666-40-4003", BirthDate: "1989-12-24"},
		},
		CheckEviction: {
			{FirstName: "Colin", LastName: "Baxter", SSN: "666-50-5001", BirthDate: "1986-06-06"},
			{FirstName: "Rosa", LastName: "Delgado", SSN: "666-50-5002", BirthDate: "1975-04-23", Adverse: true},
			{FirstName: "Jana", LastName: "Horak", SSN: "666-50-5003", BirthDate: "1992-02-14"},
		},
	}
}
