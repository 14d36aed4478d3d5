// Copyright 2025 The Pathfinder Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ingest

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-crypt/x/blake2b"

	"github.com/bikemaster2331/pathfinder/core"
)

// datasetItem is one entry of the source dataset file.
type datasetItem struct {
	Input      string     `json:"input"`
	Output     string     `json:"output"`
	Title      string     `json:"title"`
	Topic      string     `json:"topic"`
	Summary    string     `json:"summary_offline"`
	PlaceName  string     `json:"place_name"`
	Location   string     `json:"location"`
	Budget     string     `json:"budget"`
	Activities stringList `json:"activities"`
	GroupType  string     `json:"group_type"`
	SkillLevel string     `json:"skill_level"`
}

// stringList accepts either a JSON string or an array of strings; the
// dataset has used both shapes over time.
type stringList []string

func (s *stringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single != "" {
			*s = []string{single}
		}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*s = many
	return nil
}

// LoadDataset reads the dataset file into fact records without vectors.
// Items missing either the question or the answer are skipped.
func LoadDataset(path string) ([]*core.FactRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", path, err)
	}

	var items []datasetItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse dataset %s: %w", path, err)
	}

	records := make([]*core.FactRecord, 0, len(items))
	for _, item := range items {
		if item.Input == "" || item.Output == "" {
			continue
		}
		title := item.Title
		if title == "" {
			title = "General Info"
		}
		topic := item.Topic
		if topic == "" {
			topic = "General"
		}
		summary := item.Summary
		if summary == "" {
			summary = item.Output
		}
		records = append(records, &core.FactRecord{
			Id:         core.IDFromContent(item.Input),
			Question:   item.Input,
			Answer:     item.Output,
			Summary:    summary,
			Title:      title,
			Topic:      topic,
			PlaceName:  item.PlaceName,
			Location:   item.Location,
			Budget:     item.Budget,
			Activities: []string(item.Activities),
			GroupType:  item.GroupType,
			SkillLevel: item.SkillLevel,
		})
	}
	return records, nil
}

// Fingerprint hashes the dataset file. Identical bytes produce an
// identical fingerprint, so an unchanged dataset skips the rebuild.
func Fingerprint(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read dataset %s: %w", path, err)
	}
	h, _ := blake2b.New(16, nil)
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}
