/*
Package radix facilitates interaction with a Radix network gateway, with the
intention of allowing ledger queries, manifest construction, and transaction
signing/submission.

This software is designed for wallet and dApp backends. As such, it implements
only the parts of the gateway API that are directly relevant to reading account
holdings and submitting transactions, rather than the entire gateway surface.
*/

package radix
