// Package config loads the animation settings: built-in defaults, then an optional YAML file,
// then whatever command-line flags were explicitly set.
package config

import (
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/regginator/bruteviz/charset"
	"github.com/regginator/bruteviz/util"
)

var ErrUnknownOption = errors.New("unknown option")

// Config holds every setting the CLI understands. Field yaml names double as flag names.
type Config struct {
	// Target is the string being "cracked", longer than 10 symbols gets truncated
	Target string `yaml:"target"`
	// Charset is one of the preset names
	Charset string `yaml:"chars" validate:"required,oneof=demo alpha numeric alphanumeric"`
	// Speed multiplies the base stepping rate
	Speed int `yaml:"speed" validate:"min=1"`
	// FPS is the frame rate of the animation loop
	FPS int `yaml:"fps" validate:"min=1,max=240"`
	// Start seeds the attempt counter, decimal, may exceed int64
	Start string `yaml:"start" validate:"omitempty,number"`

	LogFile  string `yaml:"log"`
	Headless bool   `yaml:"headless"`
}

func Default() Config {
	return Config{
		Target:  "CAB",
		Charset: charset.Demo,
		Speed:   1,
		FPS:     60,
	}
}

// Load reads a YAML file over the defaults. Unknown keys are an error so typos don't go unnoticed.
func Load(path string) (Config, error) {
	cfg := Default()

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	if err := cfg.decode(f); err != nil {
		return cfg, fmt.Errorf("failed to parse config file \"%s\": %w", path, err)
	}

	return cfg, nil
}

func (cfg *Config) decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	// An empty file is fine, it just keeps the defaults
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	return nil
}

// Override sets a single option by its flag name, from the flag's string value
func (cfg *Config) Override(name string, value string) error {
	switch name {
	case "target":
		cfg.Target = value
	case "chars":
		cfg.Charset = strings.ToLower(strings.TrimSpace(value))
	case "speed":
		speed, err := util.ParseSpeed(value)
		if err != nil {
			return err
		}
		cfg.Speed = speed
	case "fps":
		fps, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("failed to parse fps \"%s\": %w", value, err)
		}
		cfg.FPS = fps
	case "start":
		cfg.Start = strings.TrimSpace(value)
	case "log":
		cfg.LogFile = value
	case "headless":
		headless, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("failed to parse headless \"%s\": %w", value, err)
		}
		cfg.Headless = headless
	default:
		return fmt.Errorf("%w \"%s\"", ErrUnknownOption, name)
	}

	return nil
}

// StartIndex parses Start, nil when unset
func (cfg Config) StartIndex() (*big.Int, error) {
	if cfg.Start == "" {
		return nil, nil
	}

	index, ok := new(big.Int).SetString(cfg.Start, 10)
	if !ok || index.Sign() < 0 {
		return nil, fmt.Errorf("start index \"%s\" is not a non-negative integer", cfg.Start)
	}

	return index, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by the names users actually type
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("yaml"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})

	return v
}

// Validate checks every field and folds all failures into one error
func (cfg Config) Validate() error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s \"%v\" must be one of [%s]", fe.Field(), fe.Value(), fe.Param()))
		case "min", "max":
			msgs = append(msgs, fmt.Sprintf("%s (%v) must be %s %s", fe.Field(), fe.Value(), boundWord(fe.Tag()), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s \"%v\" failed %s", fe.Field(), fe.Value(), fe.Tag()))
		}
	}

	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func boundWord(tag string) string {
	if tag == "min" {
		return "at least"
	}
	return "at most"
}
