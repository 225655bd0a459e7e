package catalog

// Digital storage pivots through the byte and carries both decimal (SI) and
// binary (IEC) multiples side by side.
func init() {
	register("digital", buildDigital)
}

func buildDigital() *Category {
	return &Category{
		ID:          "digital",
		Name:        "Digital Storage",
		Icon:        "chip",
		Description: "Data size units, decimal and binary",
		BaseUnitID:  "byte",
		Units: []*Unit{
			baseUnit("byte", "Byte", "B", "bytes", 0),
			unit("bit", "Bit", "bit", "bits", 0.125, 0),
			unit("kilobyte", "Kilobyte", "kB", "kilobytes", 1e3, 2),
			unit("kibibyte", "Kibibyte", "KiB", "kibibytes", 1024, 2),
			unit("megabyte", "Megabyte", "MB", "megabytes", 1e6, 2),
			unit("mebibyte", "Mebibyte", "MiB", "mebibytes", 1024*1024, 2),
			unit("gigabyte", "Gigabyte", "GB", "gigabytes", 1e9, 2, "gig"),
			unit("gibibyte", "Gibibyte", "GiB", "gibibytes", 1024*1024*1024, 2),
			unit("terabyte", "Terabyte", "TB", "terabytes", 1e12, 2),
			unit("tebibyte", "Tebibyte", "TiB", "tebibytes", 1024*1024*1024*1024, 2),
		},
		PopularUnits: []UnitID{"byte", "kilobyte", "megabyte", "gigabyte", "mebibyte", "gibibyte"},
	}
}
