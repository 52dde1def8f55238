/*
Package acl implements the administrative access control of the vault.

A single owner is declared in the "acl" configuration. The owner grants roles.
Each role has exactly one holder, granting a role again replaces the previous
holder. Extensions check the caller with RequireRole and RequireOwner.
*/
package acl
