/*
Package runtime hosts the arcade contract on a local badger store.

Each call runs inside one badger read-write transaction while the runtime
mutex is held, so calls are totally ordered and a call's state writes and
ledger moves commit together or not at all. Queries use read transactions
and cannot write.

Balances live under the "b/" prefix as 8-byte big-endian integers keyed by
address. A game's custody is simply the balance at the game's record
address, so the ledger never needs to know about games. Contract state
lives under "s/".

Typical use:

	cfg := runtime.DefaultConfig()
	rt, err := runtime.Open(cfg)
	if err != nil {
		return err
	}
	defer rt.Close()

	rc, err := rt.Call(ctx, sender, contract.MethodCreateGame, payload)
*/
package runtime
