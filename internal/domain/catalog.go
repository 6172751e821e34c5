package domain

import (
	"fmt"
	"time"
)

// SlotCatalog is the ordered set of slot labels a center can offer in a day.
// Its order is the canonical order for every slot list returned to callers.
type SlotCatalog struct {
	labels []string
	index  map[string]int
}

// DefaultCatalog 25 half-hour labels from 09:00 AM to 09:00 PM inclusive.
var DefaultCatalog = MustCatalog(GenerateLabels(DefaultDayStartMinutes, DefaultDayEndMinutes, DefaultSlotLengthMinutes))

// NewCatalog builds a catalog from labels in canonical order.
func NewCatalog(labels []string) (*SlotCatalog, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("slot catalog is empty")
	}

	index := make(map[string]int, len(labels))
	for i, label := range labels {
		if label == "" {
			return nil, fmt.Errorf("slot catalog: empty label at position %d", i)
		}
		if _, dup := index[label]; dup {
			return nil, fmt.Errorf("slot catalog: duplicate label %q", label)
		}
		index[label] = i
	}

	return &SlotCatalog{
		labels: append([]string(nil), labels...),
		index:  index,
	}, nil
}

// MustCatalog is NewCatalog that panics on error.
func MustCatalog(labels []string) *SlotCatalog {
	c, err := NewCatalog(labels)
	if err != nil {
		panic(err)
	}
	return c
}

// GenerateLabels renders labels from startMin to endMin (both minutes after midnight, end inclusive).
func GenerateLabels(startMin, endMin, stepMin int) []string {
	if stepMin <= 0 || endMin < startMin {
		return nil
	}

	midnight := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	labels := make([]string, 0, (endMin-startMin)/stepMin+1)
	for m := startMin; m <= endMin; m += stepMin {
		labels = append(labels, midnight.Add(time.Duration(m)*time.Minute).Format(SlotLabelFormat))
	}
	return labels
}

// Labels returns a copy of the catalog labels in canonical order.
func (c *SlotCatalog) Labels() []string {
	return append([]string(nil), c.labels...)
}

func (c *SlotCatalog) Len() int {
	return len(c.labels)
}

func (c *SlotCatalog) Contains(label string) bool {
	_, ok := c.index[label]
	return ok
}

// Sort returns the catalog members of labels in canonical order, without duplicates.
// Labels outside the catalog are dropped.
func (c *SlotCatalog) Sort(labels []string) []string {
	present := make([]bool, len(c.labels))
	for _, label := range labels {
		if i, ok := c.index[label]; ok {
			present[i] = true
		}
	}

	out := make([]string, 0, len(labels))
	for i, ok := range present {
		if ok {
			out = append(out, c.labels[i])
		}
	}
	return out
}
