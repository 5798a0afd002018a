package yamlenc

import (
	"gopkg.in/yaml.v3"

	"github.com/clockworklabs/sats-go/pkg/sats/ser"
)

func init() {
	ser.MustRegisterFormat(ser.Format{Name: FormatName, Marshal: Marshal})
}

// Marshal renders v as a YAML document.
func Marshal(v any) ([]byte, error) {
	node, err := EncodeNode(v)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(node)
}

// EncodeNode returns the node tree without rendering it.
func EncodeNode(v any) (*yaml.Node, error) {
	return ser.Encode[*yaml.Node](NewEncoder(), v)
}
