/*
Package resilience provides the circuit breaker guarding remote calls.

The Cozy attribute fetcher runs every request through a Breaker so that an
unreachable instance fails fast instead of stalling each autofill.

# Usage

	breaker := resilience.New("cozy", resilience.Settings{
		Timeout: 30 * time.Second,
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, cozy.ErrAttributeNotFound)
		},
	})

	err := breaker.Execute(ctx, func(ctx context.Context) error {
		return fetch(ctx)
	})

# States

	Closed --[failures]-> Open --[timeout]-> Half-Open --[successes]-> Closed
	                                           |
	                                    [failure]
	                                           |
	                                           v
	                                         Open
*/
package resilience
