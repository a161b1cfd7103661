package mapreduce

// Entry is a key and the number of times it was counted.
type Entry struct {
	Key   string
	Count int
}

// Counter counts string keys and remembers the order keys were first seen.
type Counter struct {
	index   map[string]int
	entries []Entry
}

func NewCounter() *Counter {
	return &Counter{index: make(map[string]int)}
}

// Add increases the count for key by n.
func (c *Counter) Add(key string, n int) {
	if i, ok := c.index[key]; ok {
		c.entries[i].Count += n
		return
	}
	c.index[key] = len(c.entries)
	c.entries = append(c.entries, Entry{Key: key, Count: n})
}

func (c *Counter) Inc(key string) {
	c.Add(key, 1)
}

// Len is the number of distinct keys.
func (c *Counter) Len() int {
	return len(c.entries)
}

// Entries returns a copy of all entries in first-seen order.
func (c *Counter) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Map counts every key emitted by keys for every item, in item order.
func Map(items []string, keys func(item string, emit func(key string))) *Counter {
	c := NewCounter()
	for _, item := range items {
		keys(item, c.Inc)
	}
	return c
}
