package adtschema

// DefaultDiscriminator is the property name used to select a union case when
// no override is configured.
const DefaultDiscriminator = "kind"

// Config carries generator settings. They are validated once at construction
// and fixed for the generator's lifetime.
type Config struct {
	// DiscriminatorPropertyName is the JSON field whose string value selects
	// which union case an object must match.
	DiscriminatorPropertyName string
}

// Option mutates the Config during generator construction.
type Option func(*Config)

// WithDiscriminator overrides the discriminator property name.
func WithDiscriminator(name string) Option {
	return func(c *Config) { c.DiscriminatorPropertyName = name }
}

func defaultConfig() Config {
	return Config{DiscriminatorPropertyName: DefaultDiscriminator}
}
