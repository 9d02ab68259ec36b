package curriculum

import (
	"context"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// File is the on-disk layout of a curriculum catalog.
type File struct {
	Subjects []SubjectFile `yaml:"subjects"`
}

// SubjectFile groups the topics of one subject.
type SubjectFile struct {
	Name      string      `yaml:"name"`
	ExamBoard string      `yaml:"exam_board"`
	Topics    []TopicFile `yaml:"topics"`
}

// TopicFile is a topic entry inside a SubjectFile.
type TopicFile struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
	Level int    `yaml:"level"`
	Order *int   `yaml:"order"`
}

// LoadFile reads and validates a YAML catalog file.
func LoadFile(path string) ([]Topic, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog. Topics without an explicit order take
// their position within the subject; topics without a level are level 3.
func Parse(data []byte) ([]Topic, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog yaml: %w", err)
	}

	var topics []Topic
	for _, s := range f.Subjects {
		for i, tf := range s.Topics {
			order := i
			if tf.Order != nil {
				order = *tf.Order
			}
			level := TopicLevel(tf.Level)
			if level == 0 {
				level = SchedulableLevel
			}
			topics = append(topics, Topic{
				ID:         tf.ID,
				Title:      tf.Title,
				Subject:    s.Name,
				ExamBoard:  s.ExamBoard,
				OrderIndex: order,
				Level:      level,
			})
		}
	}

	if err := Validate(topics); err != nil {
		return nil, err
	}
	return topics, nil
}

// Catalog is an in-memory Loader.
type Catalog struct {
	topics []Topic
}

// NewCatalog builds a Catalog from already validated topics.
func NewCatalog(topics []Topic) *Catalog {
	cp := make([]Topic, len(topics))
	copy(cp, topics)
	return &Catalog{topics: cp}
}

// LoadTopics implements Loader.
func (c *Catalog) LoadTopics(_ context.Context, subjects []string) ([]Topic, error) {
	return SelectSchedulable(c.topics, subjects), nil
}

// SelectSchedulable returns the level-3 topics of the given subjects,
// ordered by the subjects' order in the request, then OrderIndex.
func SelectSchedulable(all []Topic, subjects []string) []Topic {
	rank := make(map[string]int, len(subjects))
	for i, s := range subjects {
		if _, ok := rank[s]; !ok {
			rank[s] = i
		}
	}

	var out []Topic
	for _, t := range all {
		if _, ok := rank[t.Subject]; !ok {
			continue
		}
		if t.Level != 0 && t.Level != SchedulableLevel {
			continue
		}
		out = append(out, t)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if rank[out[i].Subject] != rank[out[j].Subject] {
			return rank[out[i].Subject] < rank[out[j].Subject]
		}
		return out[i].OrderIndex < out[j].OrderIndex
	})
	return out
}
