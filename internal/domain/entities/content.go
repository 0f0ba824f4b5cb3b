package entities

import (
	"fmt"
	"time"
)

// Section is a content category.
type Section string

const (
	SectionBanner  Section = "banner"
	SectionAbyss   Section = "abyss"
	SectionStygian Section = "stygian"
	SectionTheater Section = "theater"
	SectionEvents  Section = "events"
)

// FixedSections hold at most one row each.
var FixedSections = []Section{SectionBanner, SectionAbyss, SectionStygian, SectionTheater}

// ParseSection returns the section named s.
func ParseSection(s string) (Section, error) {
	switch sec := Section(s); sec {
	case SectionBanner, SectionAbyss, SectionStygian, SectionTheater, SectionEvents:
		return sec, nil
	}
	return "", fmt.Errorf("unknown section %q", s)
}

// IsFixed reports whether the section is one of the four single-row sections.
func (s Section) IsFixed() bool {
	return s != SectionEvents
}

// Region is a server cluster with its own clock.
type Region string

const (
	RegionAsia    Region = "asia"
	RegionEurope  Region = "europe"
	RegionAmerica Region = "america"
)

// Regions lists every region in display order.
var Regions = []Region{RegionAsia, RegionEurope, RegionAmerica}

// MediaRef is an opaque handle to an attached image.
type MediaRef string

// ContentItem is one tracked piece of time-limited content.
// Deadlines are UTC instants; a zero value means the region has no deadline.
type ContentItem struct {
	ID         int64
	Section    Section
	Title      string
	Name       string
	EndAsia    time.Time
	EndEurope  time.Time
	EndAmerica time.Time
	Media      MediaRef
}

// Deadline returns the deadline for region r, zero when unset.
func (c *ContentItem) Deadline(r Region) time.Time {
	switch r {
	case RegionAsia:
		return c.EndAsia
	case RegionEurope:
		return c.EndEurope
	case RegionAmerica:
		return c.EndAmerica
	}
	return time.Time{}
}

// SetDeadline stores t as the deadline for region r.
func (c *ContentItem) SetDeadline(r Region, t time.Time) {
	switch r {
	case RegionAsia:
		c.EndAsia = t
	case RegionEurope:
		c.EndEurope = t
	case RegionAmerica:
		c.EndAmerica = t
	}
}

// AlertKind is one of the two notification triggers.
type AlertKind string

const (
	AlertOneHour AlertKind = "one_hour_remaining"
	AlertExpired AlertKind = "expired"
)

// LedgerEntry marks a notification as already dispatched.
type LedgerEntry struct {
	ContentID int64
	Region    Region
	Kind      AlertKind
}
