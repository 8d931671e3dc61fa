package words

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type seedFile struct {
	Words []NewWord `yaml:"words"`
}

// LoadSeedFile reads a YAML list of words:
//
//	words:
//	  - text: elephant
//	    difficulty: medium
//	    sentence: An elephant is a very large animal.
//	    translation: Elefante
func LoadSeedFile(path string) ([]NewWord, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var sf seedFile
	if err := yaml.Unmarshal(b, &sf); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	for i := range sf.Words {
		if err := sf.Words[i].Validate(); err != nil {
			return nil, fmt.Errorf("seed word %d: %w", i+1, err)
		}
	}
	return sf.Words, nil
}
