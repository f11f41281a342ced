package model

// Plan is a box pricing and sizing plan.
type Plan struct {
	ID                 int
	Name               string
	CPUs               int
	RAMMB              int
	DiskSizeMB         int
	PricePerHour       float64
	PricePerHourFrozen float64
}

// Distribution is an installable operating system image.
type Distribution struct {
	Key           string
	Name          string
	MinDiskSizeMB int
	DefaultKernel string
	RootDiskMode  string
}

// CatalogKind identifies a read only catalog endpoint.
type CatalogKind string

const (
	CatalogKindPlans         CatalogKind = "plans"
	CatalogKindDistributions CatalogKind = "distributions"
	CatalogKindIPs           CatalogKind = "ips"
	CatalogKindDoc           CatalogKind = "doc"
)
