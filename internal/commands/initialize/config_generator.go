package initialize

import (
	"bytes"

	"github.com/goccy/go-yaml"
	"github.com/opensource-hub/phpbb-core/internal/config"
)

const configHeader = `# phpbb-ext configuration file
# Paths below are resolved against "root".
`

// GenerateConfig produces a commented starter configuration for a board
// rooted at the given directory.
func GenerateConfig(root string) ([]byte, error) {
	cfg := config.Default()
	cfg.Root = root

	body, err := yaml.MarshalWithOptions(cfg,
		yaml.Indent(2),
		yaml.IndentSequence(true),
	)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(configHeader)
	buf.Write(body)
	// Empty lists spelled out so the shape of the file is discoverable.
	buf.WriteString("enabled: []\n")
	return buf.Bytes(), nil
}
