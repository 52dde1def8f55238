/*
Package bridge keeps the list of remote chains the vault ledger may exchange
claims with.

Each ChainPermission declares the remote ledger and asset and the outbound and
inbound limiter settings. Limits are only declared here, they are enforced by
the relayer. The list is a configuration owned by the acl owner.
*/
package bridge
