package cli

import (
	"context"
)

type ServiceListCmd struct {
	ActiveOnly bool `help:"Show only active services."`
}

func (c *ServiceListCmd) Run(ctx *Context) error {
	services, err := ctx.API.Services(context.Background())
	if err != nil {
		return err
	}
	if len(services) == 0 {
		ctx.printf("No services found\n")
		return nil
	}
	for _, s := range services {
		if c.ActiveOnly && !s.IsActive {
			continue
		}
		state := "active"
		if !s.IsActive {
			state = "inactive"
		}
		ctx.printf("  [%s] %s - %dm, $%.2f (%s)  %s\n", state, s.Name, s.Duration, s.Price, s.Category, s.ID)
	}
	return nil
}

type ClientListCmd struct{}

func (c *ClientListCmd) Run(ctx *Context) error {
	clients, err := ctx.API.Clients(context.Background())
	if err != nil {
		return err
	}
	if len(clients) == 0 {
		ctx.printf("No clients found\n")
		return nil
	}
	for _, cl := range clients {
		ctx.printf("  [%s] %s <%s> %s  lifetime $%.2f\n", cl.Status, cl.Name, cl.Email, cl.Phone, cl.LifetimeValue)
	}
	return nil
}
