package cmds

import (
	"bufio"
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Row is one dataset example: the model completion and the reference it is
// scored against. Lint only needs the completion.
type Row struct {
	Completion string `json:"completion"`
	Reference  string `json:"reference"`
}

// ReadDataset reads a JSONL file of rows. Blank lines are skipped, anything
// else that fails to parse aborts with its line number.
func ReadDataset(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open dataset %s", path)
	}
	defer func() {
		_ = f.Close()
	}()

	var rows []Row
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var row Row
		if err := json.Unmarshal(line, &row); err != nil {
			return nil, errors.Wrapf(err, "%s:%d: could not parse row", path, lineNo)
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "could not read dataset %s", path)
	}

	log.Debug().Str("path", path).Int("rows", len(rows)).Msg("loaded dataset")
	return rows, nil
}

// RunConfig is the YAML run description accepted by score, so training
// harnesses can pin a scoring setup in a file instead of flags. Flags set on
// the command line override it.
type RunConfig struct {
	Mode           string `yaml:"mode"`
	Dataset        string `yaml:"dataset"`
	Tokenizer      string `yaml:"tokenizer"`
	TokenizerModel string `yaml:"tokenizer-model"`
	Workers        int    `yaml:"workers"`
	Stream         bool   `yaml:"stream"`
}

func LoadRunConfig(path string) (*RunConfig, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read run config %s", path)
	}
	ret := &RunConfig{}
	if err := yaml.Unmarshal(payload, ret); err != nil {
		return nil, errors.Wrapf(err, "could not parse run config %s", path)
	}
	return ret, nil
}
