package discovery

import (
	"fmt"
	"log/slog"
	"net"

	"github.com/hashicorp/consul/api"
	"github.com/pkg/errors"
)

type ConsulClient struct {
	client *api.Client
	logger *slog.Logger
}

type ServiceConfig struct {
	Name    string
	ID      string
	Address string
	Port    int
	Tags    []string
}

func NewConsulClient(address string, logger *slog.Logger) (*ConsulClient, error) {
	cfg := api.DefaultConfig()
	cfg.Address = address

	client, err := api.NewClient(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "create consul client")
	}

	return &ConsulClient{client: client, logger: logger}, nil
}

// Registration builds the agent registration with an HTTP health check on /health.
func Registration(cfg ServiceConfig) *api.AgentServiceRegistration {
	hostPort := net.JoinHostPort(cfg.Address, fmt.Sprint(cfg.Port))
	return &api.AgentServiceRegistration{
		ID:      cfg.ID,
		Name:    cfg.Name,
		Port:    cfg.Port,
		Address: cfg.Address,
		Tags:    cfg.Tags,
		Check: &api.AgentServiceCheck{
			HTTP:                           "http://" + hostPort + "/health",
			Interval:                       "10s",
			Timeout:                        "5s",
			DeregisterCriticalServiceAfter: "30s",
		},
	}
}

func (c *ConsulClient) Register(cfg ServiceConfig) error {
	if cfg.Address == "" {
		cfg.Address = outboundIP()
	}
	if err := c.client.Agent().ServiceRegister(Registration(cfg)); err != nil {
		return errors.Wrap(err, "register service")
	}

	c.logger.Info("registered with consul",
		slog.String("name", cfg.Name),
		slog.String("id", cfg.ID),
		slog.String("address", cfg.Address),
		slog.Int("port", cfg.Port),
	)
	return nil
}

func (c *ConsulClient) Deregister(serviceID string) error {
	if err := c.client.Agent().ServiceDeregister(serviceID); err != nil {
		return errors.Wrap(err, "deregister service")
	}
	c.logger.Info("deregistered from consul", slog.String("id", serviceID))
	return nil
}

// outboundIP is the local address used for the default route.
func outboundIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return "127.0.0.1"
	}
	defer conn.Close()

	return conn.LocalAddr().(*net.UDPAddr).IP.String()
}
