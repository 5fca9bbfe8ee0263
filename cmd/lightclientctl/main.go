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

// Command lightclientctl is a reference host envelope (spec §4.8): a
// single-shot CLI that decodes the §6 base64(RLP(...)) JSON payloads from
// disk, drives client.Client, and prints the §6 response envelope. It is a
// demonstration harness, not part of the core's public contract.
package main

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"

	"github.com/celo-org/celo-light-client/client"
	"github.com/celo-org/celo-light-client/codec"
	"github.com/celo-org/celo-light-client/store"
	"github.com/celo-org/celo-light-client/types"
)

var (
	storeFlag = &cli.StringFlag{
		Name:  "store",
		Usage: "path to the persisted client state (JSON-wrapped base64 RLP record)",
		Value: "client_state.json",
	}
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "path to a StateConfig TOML file",
	}
)

func main() {
	app := &cli.App{
		Name:  "lightclientctl",
		Usage: "reference CLI envelope for the Celo/Istanbul light-client core",
		Commands: []*cli.Command{
			initCommand,
			updateHeaderCommand,
			latestHeightCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Error("lightclientctl failed", "err", err)
		os.Exit(1)
	}
}

// fileStoreRecord is the JSON file layout loadFileStore and saveFileStore
// use to persist the single client_state record as its base64 RLP bytes,
// matching §6's "payloads travel as base64 inside a JSON field" wire format.
type fileStoreRecord struct {
	ClientState string `json:"client_state"`
}

func loadFileStore(path string) (*store.MemStore, error) {
	mem := store.NewMemStore()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return mem, nil
	}
	if err != nil {
		return nil, err
	}
	var rec fileStoreRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	if rec.ClientState == "" {
		return mem, nil
	}
	raw, err := base64.StdEncoding.DecodeString(rec.ClientState)
	if err != nil {
		return nil, err
	}
	if err := mem.Put([]byte("client_state"), raw); err != nil {
		return nil, err
	}
	return mem, nil
}

func saveFileStore(path string, mem *store.MemStore) error {
	raw, err := mem.Get([]byte("client_state"))
	if err != nil {
		return err
	}
	encoded := base64.StdEncoding.EncodeToString(raw)
	data, err := json.MarshalIndent(fileStoreRecord{ClientState: encoded}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

var initCommand = &cli.Command{
	Name:  "init",
	Usage: "initialize the light client from a base64-RLP StateEntry and StateConfig",
	Flags: []cli.Flag{
		storeFlag,
		configFlag,
		&cli.StringFlag{Name: "state-entry", Required: true, Usage: "base64(RLP(StateEntry))"},
		&cli.StringFlag{Name: "state-config", Usage: "base64(RLP(StateConfig)); overrides --config"},
	},
	Action: func(ctx *cli.Context) error {
		entry, err := codec.DecodeBase64RLP[types.StateEntry](ctx.String("state-entry"))
		if err != nil {
			return err
		}

		var config types.StateConfig
		switch {
		case ctx.String("state-config") != "":
			config, err = codec.DecodeBase64RLP[types.StateConfig](ctx.String("state-config"))
		case ctx.String("config") != "":
			config, err = loadConfig(ctx.String("config"))
		default:
			err = fmt.Errorf("one of --state-config or --config is required")
		}
		if err != nil {
			return err
		}

		mem, err := loadFileStore(ctx.String("store"))
		if err != nil {
			return err
		}
		c := client.New(mem)
		if err := c.Init(entry, config); err != nil {
			return err
		}
		if err := saveFileStore(ctx.String("store"), mem); err != nil {
			return err
		}
		fmt.Println(`{"result":{"is_valid":true,"err_msg":""}}`)
		return nil
	},
}

var updateHeaderCommand = &cli.Command{
	Name:  "update-header",
	Usage: "submit a new header (base64 RLP) for verification and state update",
	Flags: []cli.Flag{
		storeFlag,
		&cli.StringFlag{Name: "header", Required: true, Usage: "base64(RLP(Header))"},
	},
	Action: func(ctx *cli.Context) error {
		header, err := codec.DecodeBase64RLP[types.Header](ctx.String("header"))
		if err != nil {
			return err
		}

		mem, err := loadFileStore(ctx.String("store"))
		if err != nil {
			return err
		}
		c := client.New(mem)
		entry, err := c.UpdateHeader(&header)
		if err != nil {
			fmt.Printf(`{"result":{"is_valid":false,"err_msg":%q}}`+"\n", err.Error())
			return nil
		}
		if err := saveFileStore(ctx.String("store"), mem); err != nil {
			return err
		}

		newState, err := codec.EncodeBase64RLP(entry)
		if err != nil {
			return err
		}
		fmt.Printf(`{"new_consensus_state":{"data":%q},"result":{"is_valid":true,"err_msg":""}}`+"\n", newState)
		return nil
	},
}

var latestHeightCommand = &cli.Command{
	Name:  "latest-height",
	Usage: "query the client's latest verified header height",
	Flags: []cli.Flag{storeFlag},
	Action: func(ctx *cli.Context) error {
		mem, err := loadFileStore(ctx.String("store"))
		if err != nil {
			return err
		}
		resp, err := client.New(mem).LatestHeight()
		if err != nil {
			return err
		}
		out, err := json.Marshal(resp)
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}
