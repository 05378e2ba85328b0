// Package catalog: health knowledge catalog.
package catalog

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fit-advisor/internal/domain"
)

// seedTopics is the built-in health knowledge catalog. Declaration order is
// the tie-break when a query mentions more than one topic.
var seedTopics = []domain.HealthTopic{
	{
		Key:         "diabetes",
		Description: "A chronic condition that affects how your body turns food into energy.",
		Tips: []string{
			"Follow a low-carb, high-fiber diet.",
			"Exercise regularly (e.g., walking, cycling).",
			"Monitor blood sugar daily.",
			"Avoid sugary snacks and beverages.",
		},
	},
	{
		Key:         "high blood pressure",
		Description: "Also called hypertension; can lead to heart issues if untreated.",
		Tips: []string{
			"Reduce salt intake.",
			"Exercise daily for 30 minutes.",
			"Avoid smoking and alcohol.",
			"Eat potassium-rich foods like bananas.",
		},
	},
	{
		Key:         "obesity",
		Description: "A medical condition involving excess body fat.",
		Tips: []string{
			"Eat in a calorie deficit.",
			"Avoid processed food and sugars.",
			"Drink water before meals.",
			"Walk at least 10,000 steps daily.",
		},
	},
	{
		Key:         "headache",
		Description: "Pain in the head region, often due to stress, dehydration, or sleep issues.",
		Tips: []string{
			"Drink plenty of water.",
			"Practice stress-relieving activities like meditation.",
			"Avoid excessive screen time.",
			"Get 7-8 hours of sleep.",
		},
	},
	{
		Key:         "fatigue",
		Description: "Feeling overtired, with low energy and motivation.",
		Tips: []string{
			"Ensure consistent sleep schedule (7-8 hrs).",
			"Stay hydrated.",
			"Limit caffeine late in the day.",
			"Take short walks to refresh energy.",
		},
	},
}

// Knowledge is the catalog of health topics. Iteration order is insertion
// order: seed topics first, overlay topics appended after.
type Knowledge struct {
	topics []domain.HealthTopic
	index  map[string]int
}

// NewKnowledge creates a catalog from the given topics.
// Keys are lowercased; a repeated key replaces the earlier topic's content
// without changing its position.
func NewKnowledge(topics []domain.HealthTopic) *Knowledge {
	k := &Knowledge{index: make(map[string]int, len(topics))}
	for _, topic := range topics {
		k.add(topic)
	}
	return k
}

// DefaultKnowledge creates the built-in health knowledge catalog
func DefaultKnowledge() *Knowledge {
	return NewKnowledge(seedTopics)
}

func (k *Knowledge) add(topic domain.HealthTopic) {
	key := strings.ToLower(strings.TrimSpace(topic.Key))
	if key == "" || topic.Description == "" {
		return
	}
	topic.Key = key
	if i, exists := k.index[key]; exists {
		k.topics[i] = topic
		return
	}
	k.index[key] = len(k.topics)
	k.topics = append(k.topics, topic)
}

// Lookup returns the topic for an exact key
func (k *Knowledge) Lookup(key string) (domain.HealthTopic, bool) {
	i, ok := k.index[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return domain.HealthTopic{}, false
	}
	return k.topics[i], true
}

// Topics returns all topics in iteration order
func (k *Knowledge) Topics() []domain.HealthTopic {
	out := make([]domain.HealthTopic, len(k.topics))
	copy(out, k.topics)
	return out
}

// Keys returns all topic keys in iteration order
func (k *Knowledge) Keys() []string {
	keys := make([]string, len(k.topics))
	for i, topic := range k.topics {
		keys[i] = topic.Key
	}
	return keys
}

// Len returns the number of topics
func (k *Knowledge) Len() int {
	return len(k.topics)
}

// knowledgeFile is the yaml overlay file format
type knowledgeFile struct {
	Topics []domain.HealthTopic `yaml:"topics"`
}

// LoadKnowledgeFile reads an overlay of health topics from a yaml file
func LoadKnowledgeFile(path string) ([]domain.HealthTopic, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read knowledge file: %w", err)
	}

	var f knowledgeFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse knowledge file: %w", err)
	}
	return f.Topics, nil
}

// DefaultKnowledgeWithOverlay builds the catalog from the seed topics plus
// an optional overlay file. An empty path returns the plain default catalog.
func DefaultKnowledgeWithOverlay(path string) (*Knowledge, error) {
	k := DefaultKnowledge()
	if path == "" {
		return k, nil
	}
	overlay, err := LoadKnowledgeFile(path)
	if err != nil {
		return nil, err
	}
	for _, topic := range overlay {
		k.add(topic)
	}
	return k, nil
}
