// Copyright 2024 The celo-light-client Authors
// This file is part of the celo-light-client library.
//
// The celo-light-client library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The celo-light-client library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the celo-light-client library. If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"os"
	"reflect"

	"github.com/naoina/toml"

	"github.com/celo-org/celo-light-client/types"
)

// tomlSettings follows the shape of go-ethereum's naoina/toml loader
// configuration: TOML keys must match Go field names exactly, and keys
// with no matching field are ignored rather than reported as errors.
var tomlSettings = toml.Config{
	NormFieldName: func(typ reflect.Type, field string) string { return field },
	FieldToKey:    func(typ reflect.Type, field string) string { return field },
	MissingField: func(typ reflect.Type, key string) error {
		return nil
	},
}

// loadConfig reads a StateConfig from a TOML file on disk, the same way
// the reference geth binary loads its node config.
func loadConfig(path string) (types.StateConfig, error) {
	var cfg types.StateConfig
	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(f).Decode(&cfg)
	return cfg, err
}
