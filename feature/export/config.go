package export

// Config holds output locations.
type Config struct {
	// OutputDir receives exported catalogs when object storage is disabled.
	OutputDir string `mapstructure:"output_dir" default:"./output" toml:"output_dir"`
}
