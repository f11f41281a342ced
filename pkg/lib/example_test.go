package lib_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/slok/jiffybox/pkg/lib"
)

// This example shows how to create a client using the fake provider for testing.
func Example_testing() {
	ctx := context.Background()

	client, err := lib.New(ctx, lib.Config{Provider: lib.ProviderFake})
	if err != nil {
		panic(err)
	}
	defer client.Close()

	pass := "s3cr3t"
	res, err := client.CreateBox(ctx, lib.CreateBoxOpts{
		Name:     "test-box",
		PlanID:   10,
		Password: &pass,
	})
	if err != nil {
		panic(err)
	}

	fmt.Printf("Created: %s (id: %d, status: %s)\n", res.Value.Name, res.Value.ID, res.Value.Status)

	// Output:
	// Created: test-box (id: 1, status: READY)
}

// This example shows how lifecycle commands are checked against the box status.
func Example_lifecycle() {
	ctx := context.Background()

	client, err := lib.New(ctx, lib.Config{Provider: lib.ProviderFake})
	if err != nil {
		panic(err)
	}
	defer client.Close()

	pass := "s3cr3t"
	if _, err := client.CreateBox(ctx, lib.CreateBoxOpts{Name: "my-box", PlanID: 10, Password: &pass}); err != nil {
		panic(err)
	}

	out, err := client.FreezeBox(ctx, "my-box")
	if err != nil {
		panic(err)
	}
	fmt.Printf("freeze: %s\n", out.State)

	// A frozen box can only be thawed.
	out, err = client.StartBox(ctx, "my-box")
	if err != nil {
		panic(err)
	}
	fmt.Printf("start: %s (%s)\n", out.State, out.Reason)

	out, err = client.ThawBox(ctx, "my-box", 20)
	if err != nil {
		panic(err)
	}
	fmt.Printf("thaw: %s, plan: %d\n", out.State, out.Box.Plan.ID)

	// Output:
	// freeze: applied
	// start: rejected (START needs status READY, box 1 is FROZEN)
	// thaw: applied, plan: 20
}

// This example shows how to handle SDK errors.
func Example_errorHandling() {
	ctx := context.Background()

	client, err := lib.New(ctx, lib.Config{Provider: lib.ProviderFake})
	if err != nil {
		panic(err)
	}
	defer client.Close()

	_, err = client.GetBox(ctx, "missing")
	if errors.Is(err, lib.ErrNotFound) {
		fmt.Println("box not found")
	}

	// Output:
	// box not found
}
