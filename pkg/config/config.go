package config

import (
	"os"
	"reflect"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/lintang-b-s/nodedist/pkg/errs"
)

// NodeDistConfig. cmd/nodedist: jarak antar point di network.
type NodeDistConfig struct {
	Network        string  `toml:"network" validate:"required"`
	Points         string  `toml:"points" validate:"required_without=NetworkMode"`
	NetworkMode    bool    `toml:"network_mode"`
	ImprovedEdges  string  `toml:"improved_edges"`
	ImprovedFactor float64 `toml:"improved_factor" validate:"gt=0"`
	Output         string  `toml:"output"`
	MatrixOut      string  `toml:"matrix_out"`
	IDsOut         string  `toml:"ids_out" validate:"required_with=MatrixOut"`
	Metric         string  `toml:"metric" validate:"oneof=weighted real total"`
	Workers        int     `toml:"workers" validate:"gte=1"`
	NoEarlyExit    bool    `toml:"no_early_exit"`
	StoreBackend   string  `toml:"store_backend" validate:"omitempty,oneof=badger pebble bolt"`
	StoreDir       string  `toml:"store_dir" validate:"required_with=StoreBackend"`
}

// DistMatrixConfig. cmd/distmatrix: distance list -> file matrix binary.
type DistMatrixConfig struct {
	Input  string `toml:"input"`
	Output string `toml:"output" validate:"required"`
	IDsOut string `toml:"ids_out"`
	Metric string `toml:"metric" validate:"oneof=weighted real total"`
}

// SampleTripsConfig. cmd/sampletrips.
type SampleTripsConfig struct {
	Trips         string  `toml:"trips"`
	Distances     string  `toml:"distances" validate:"required"`
	DistanceIDs   string  `toml:"distance_ids"`
	BuildingStops string  `toml:"building_stops" validate:"required"`
	BuildingNodes string  `toml:"building_nodes" validate:"required"`
	StopPairs     string  `toml:"stop_pairs"`
	Coords        string  `toml:"coords" validate:"required_with=CoordsOut"`
	CoordsOut     string  `toml:"coords_out"`
	Output        string  `toml:"output"`
	Count         int     `toml:"count" validate:"gte=1"`
	MaxDist       float64 `toml:"max_dist" validate:"gte=0"`
	SpeedKmh      float64 `toml:"speed_kmh" validate:"gt=0"`
	Seed          uint64  `toml:"seed"`
}

type Config struct {
	NodeDist    NodeDistConfig    `toml:"nodedist"`
	DistMatrix  DistMatrixConfig  `toml:"distmatrix"`
	SampleTrips SampleTripsConfig `toml:"sampletrips"`

	Quiet           bool   `toml:"quiet"`
	MetricsTextfile string `toml:"metrics_textfile"`
}

func Default() *Config {
	return &Config{
		NodeDist: NodeDistConfig{
			ImprovedFactor: 1.5,
			Metric:         "real",
			Workers:        1,
		},
		DistMatrix: DistMatrixConfig{
			Metric: "real",
		},
		SampleTrips: SampleTripsConfig{
			Count:    1000,
			SpeedKmh: 5.0,
		},
	}
}

// Load. default lalu ditimpa isi file toml. path kosong = default saja.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.WrapErrorf(err, errs.ErrIO, "reading config %s", path)
	}
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, errs.WrapErrorf(err, errs.ErrInvalidArgument, "parsing config %s", path)
	}
	return cfg, nil
}

// ConfigPath. nilai -config dari argumen, sebelum flag lain di-parse.
func ConfigPath(args []string) string {
	for i, arg := range args {
		name, value, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if !strings.HasPrefix(arg, "-") || name != "config" {
			continue
		}
		if hasValue {
			return value
		}
		if i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

/*
Validate. validasi struct section config dengan tag validate.
semua pesan error (bahasa inggris, nama field pakai nama toml) digabung jadi satu ErrInvalidArgument.
*/
func Validate(section interface{}) error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("toml"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	err := validate.Struct(section)
	if err == nil {
		return nil
	}

	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	msgs := translateError(err, trans)
	return errs.WrapErrorf(err, errs.ErrInvalidArgument, "invalid configuration: %s", strings.Join(msgs, "; "))
}

func translateError(err error, trans ut.Translator) []string {
	validatorErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}
	msgs := make([]string, 0, len(validatorErrs))
	for _, e := range validatorErrs {
		msgs = append(msgs, e.Translate(trans))
	}
	return msgs
}
