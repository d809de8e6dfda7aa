package dao

// Vendor represents the name of an entity store vendor
type Vendor string

const (
	// VendorMemory selects the in-process store
	VendorMemory Vendor = "memory"
	// VendorFS selects the afs-backed JSON document store
	VendorFS Vendor = "fs"
)
