package catalog

// Kind identifies one of the reference catalogs.
type Kind string

const (
	KindTransportModel Kind = "transport_model"
	KindPackagingType  Kind = "packaging_type"
	KindService        Kind = "service"
	KindDeliveryStatus Kind = "delivery_status"
	KindCargoType      Kind = "cargo_type"
)

// Entry represents a single reference catalog row. The code is the stable
// business key used for cross-referencing; name is a display label only.
type Entry struct {
	ID          uint
	Name        string
	Code        string
	Description *string
	Active      bool
}

// Filter represents listing options shared by all catalogs.
type Filter struct {
	Active   *bool
	Search   string
	Ordering string
}
