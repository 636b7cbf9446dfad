package conf

import (
	"flag"
	"reflect"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

var configPath string

func init() {
	flag.StringVar(&configPath, "config", "", "Path to the config")
}

type settings struct {
	viper *viper.Viper
	path  string
}

type Option interface {
	apply(s *settings)
}

type envPrefix struct {
	prefix string
}

func (p *envPrefix) apply(s *settings) {
	s.viper.SetEnvPrefix(p.prefix)
}

func EnvPrefix(prefix string) Option {
	return &envPrefix{prefix}
}

type defaultPath struct {
	path string
}

func (p *defaultPath) apply(s *settings) {
	if s.path == "" {
		s.path = p.path
	}
}

// DefaultPath sets the config file loaded when the -config flag is absent.
func DefaultPath(path string) Option {
	return &defaultPath{path}
}

// Workaround for https://github.com/spf13/viper/issues/188: viper binds env
// variables only for keys it has already seen, so walk the config struct and
// bind every leaf explicitly.
func bindEnvs(iface interface{}, parts ...string) error {
	ifv := reflect.ValueOf(iface)
	ift := reflect.TypeOf(iface)

	if ifv.Kind() == reflect.Ptr {
		return bindEnvs(ifv.Elem().Interface(), parts...)
	}

	for i := 0; i < ift.NumField(); i++ {
		v := ifv.Field(i)
		t := ift.Field(i)
		name, ok := t.Tag.Lookup("mapstructure")
		if !ok {
			name = t.Name
		}
		if v.Kind() == reflect.Struct {
			if err := bindEnvs(v.Interface(), append(parts, name)...); err != nil {
				return err
			}
		} else if err := viper.BindEnv(strings.Join(append(parts, name), ".")); err != nil {
			return err
		}
	}

	return nil
}

func ParseConfig(config interface{}, options ...Option) error {
	// Parsed on first use, not at init: test binaries register their testing
	// flags only after package initialization.
	if !flag.Parsed() {
		flag.Parse()
	}

	s := &settings{
		viper: viper.GetViper(),
		path:  configPath,
	}
	for _, option := range options {
		option.apply(s)
	}
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if len(s.path) > 0 {
		viper.SetConfigFile(s.path)
		if err := viper.ReadInConfig(); err != nil {
			return errors.Wrap(err, "Failed to load config")
		}
	}

	if err := bindEnvs(config); err != nil {
		return errors.Wrap(err, "Failed to bind environment")
	}

	if err := viper.Unmarshal(config); err != nil {
		return errors.Wrap(err, "Failed to unmarshal config")
	}

	return nil
}
