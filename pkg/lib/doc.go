// Package lib provides a Go SDK for managing JiffyBox boxes programmatically.
//
// This package allows applications to create, manage, and inspect boxes
// without shelling out to the jiffybox CLI binary. It is useful for
// scripting, automation, and building tools on top of the provider API.
//
// # Quick Start
//
// Create a client and manage a box lifecycle:
//
//	client, err := lib.New(ctx, lib.Config{Token: os.Getenv("JIFFYBOX_TOKEN")})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Create a box.
//	dist := "debian_bookworm_64bit"
//	res, err := client.CreateBox(ctx, lib.CreateBoxOpts{
//	    Name:         "my-box",
//	    PlanID:       10,
//	    Distribution: &dist,
//	})
//
//	// Stop, freeze, thaw, remove.
//	client.StopBox(ctx, "my-box")
//	client.FreezeBox(ctx, "my-box")
//	client.ThawBox(ctx, "my-box", 20)
//	client.RemoveBox(ctx, "my-box")
//
// Boxes are referenced by ID or by name, names are resolved listing the boxes
// of the account. Numeric references are IDs, prefix a numeric name with
// "name:" (e.g. "name:42") to reference it by name.
//
// # Lifecycle
//
// Lifecycle commands are only sent when the current box status allows them:
//
//   - READY: freeze, start, stop (shutdown) and pull plug.
//   - FROZEN: thaw, with the plan the box will use once thawed.
//
// The status is read right before sending the command. When it doesn't allow
// the command nothing is sent and a rejected [TransitionOutcome] is returned
// without error:
//
//	out, err := client.FreezeBox(ctx, "my-box")
//	if err != nil {
//	    return err
//	}
//	if !out.Applied() {
//	    fmt.Println("not frozen:", out.Reason)
//	}
//
// # Messages
//
// The provider sends informational messages with its responses. They are
// returned in every [Result] and can also be received with
// [Config].MessageListener.
//
// # Journal
//
// When [Config].JournalPath is set, every mutating operation (applied,
// rejected or failed) is recorded in a local SQLite database and can be
// listed with [Client.History]. Set it to [JournalInMemory] to keep the
// journal only for the life of the client.
//
// # Error Handling
//
// All methods return errors that can be inspected with [errors.Is]:
//
//   - [ErrNotFound]: Box does not exist.
//   - [ErrAlreadyExists]: Box with the same name already exists.
//   - [ErrNotValid]: Invalid input (e.g. a thaw without plan ID).
//   - [ErrTransport]: The provider couldn't be reached.
//   - [ErrDecode]: The provider response was not valid.
//   - [ErrRefused]: The provider answered but refused the operation.
//
// # Testing
//
// Use [ProviderFake] to write tests without network access:
//
//	client, _ := lib.New(ctx, lib.Config{Provider: lib.ProviderFake})
//	defer client.Close()
//
// # Thread Safety
//
// A [Client] is safe for concurrent use from multiple goroutines. API clients
// are stateless and per call state is created per operation.
package lib
