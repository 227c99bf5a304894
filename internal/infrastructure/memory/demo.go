package memory

import _ "embed"

//go:embed demo.yaml
var demoFixture []byte

// LoadDemo construye un Store con los datos de demostración embebidos.
func LoadDemo(opts ...Option) (*Store, error) {
	return LoadFixture(demoFixture, opts...)
}
