package config

import "io"

// SetWriter redirects log output for tests
func (c *Logger) SetWriter(w io.Writer) {
	c.writer = w
}
