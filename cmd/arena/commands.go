package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"arena/internal/arena"
	"arena/internal/config"
	"arena/internal/scene"
)

type brickDoc struct {
	Position [3]float64 `yaml:"position,flow" json:"position"`
	Yaw      float64    `yaml:"yaw" json:"yaw"`
}

type rowDoc struct {
	Offset float64    `yaml:"offset" json:"offset"`
	Bricks []brickDoc `yaml:"bricks" json:"bricks"`
}

type clusterDoc struct {
	Anchor    [3]float64 `yaml:"anchor,flow" json:"anchor"`
	Direction [3]float64 `yaml:"direction,flow" json:"direction"`
	Rows      []rowDoc   `yaml:"rows" json:"rows"`
}

type layoutDoc struct {
	Seed     uint64         `yaml:"seed" json:"seed"`
	Digest   string         `yaml:"digest" json:"digest"`
	Bricks   int            `yaml:"bricks" json:"bricks"`
	Counts   map[string]int `yaml:"counts" json:"counts"`
	Clusters []clusterDoc   `yaml:"clusters" json:"clusters"`
}

func newLayoutDoc(cfg config.Config, sc *scene.Scene) layoutDoc {
	doc := layoutDoc{
		Seed:   cfg.Seed,
		Digest: arena.DigestString(sc.Digest),
		Counts: make(map[string]int),
	}
	for g, n := range sc.Counts() {
		doc.Counts[string(g)] = n
	}
	for _, c := range sc.Clusters {
		cd := clusterDoc{Anchor: c.Anchor, Direction: c.Direction}
		for _, r := range c.Rows {
			rd := rowDoc{Offset: r.Offset}
			for _, p := range r.Placements {
				rd.Bricks = append(rd.Bricks, brickDoc{Position: p.Position, Yaw: p.Yaw})
			}
			doc.Bricks += len(rd.Bricks)
			cd.Rows = append(cd.Rows, rd)
		}
		doc.Clusters = append(doc.Clusters, cd)
	}
	return doc
}

func encode(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown format %q", format)
}

func layoutCommand(w io.Writer, cfg config.Config, format string) error {
	sc, err := scene.Build(cfg)
	if err != nil {
		return err
	}
	return encode(w, format, newLayoutDoc(cfg, sc))
}

type traceDoc struct {
	Seed    uint64         `yaml:"seed" json:"seed"`
	DT      float64        `yaml:"dt" json:"dt"`
	Script  string         `yaml:"script" json:"script"`
	Samples []arena.Sample `yaml:"samples" json:"samples"`
}

func simulateCommand(w io.Writer, cfg config.Config, script string, dt float64, every int, format string) error {
	segs, err := arena.ParseScript(script)
	if err != nil {
		return err
	}
	s, err := arena.New(cfg, log.Logger)
	if err != nil {
		return err
	}
	samples, err := s.Run(segs, dt, every)
	if err != nil {
		return err
	}
	return encode(w, format, traceDoc{Seed: cfg.Seed, DT: dt, Script: script, Samples: samples})
}

func configCommand(w io.Writer, cfg config.Config) error {
	out, err := cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
