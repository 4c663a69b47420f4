package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

//go:embed data/bank.json
var defaultBank []byte

// Bank is the on-disk question bank document.
type Bank struct {
	Version int         `json:"version"`
	Levels  []LevelData `json:"levels"`
}

// LevelData is one level's section of a bank document.
type LevelData struct {
	ID     string      `json:"id"`
	Name   string      `json:"name,omitempty"`
	Topics []TopicData `json:"topics"`
}

// TopicData is a topic together with its problems.
type TopicData struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Problems    []Problem `json:"problems"`
}

// Default returns the catalog built from the embedded question bank.
func Default() (*Catalog, error) {
	c, err := Parse(defaultBank)
	if err != nil {
		return nil, fmt.Errorf("embedded bank: %w", err)
	}
	return c, nil
}

// Load reads a bank document from r and builds a Catalog.
func Load(r io.Reader) (*Catalog, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read bank: %w", err)
	}
	return Parse(raw)
}

// LoadFile reads a bank document from a file.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bank: %w", err)
	}
	defer f.Close()

	c, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse validates raw JSON against the bank schema, decodes it and builds
// a Catalog.
func Parse(raw []byte) (*Catalog, error) {
	bank, err := DecodeBank(raw)
	if err != nil {
		return nil, err
	}
	return New(bank)
}

// DecodeBank validates raw JSON against the bank schema and decodes it
// without building a Catalog.
func DecodeBank(raw []byte) (*Bank, error) {
	if err := validateBankSchema(raw); err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	var bank Bank
	if err := dec.Decode(&bank); err != nil {
		return nil, fmt.Errorf("decode bank: %w", err)
	}
	return &bank, nil
}
