package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Client holds the collectors of a command-line conversion run. It has a
// registry of its own so the counters never mix with the gateway's. A nil
// *Client is valid and records nothing.
type Client struct {
	Registry *prometheus.Registry

	Submissions *prometheus.CounterVec
}

func NewClient() *Client {
	c := &Client{
		Registry: prometheus.NewRegistry(),
		Submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "betconverter_client_submissions_total",
			Help: "client form submissions, by outcome",
		}, []string{"outcome"}),
	}

	c.Registry.MustRegister(c.Submissions)

	return c
}

func (c *Client) IncSubmission(outcome string) {
	if c == nil {
		return
	}
	c.Submissions.WithLabelValues(outcome).Inc()
}

// WriteTextfile writes the counters to path in the node_exporter textfile
// format. A nil *Client writes nothing.
func (c *Client) WriteTextfile(path string) error {
	if c == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, c.Registry)
}
