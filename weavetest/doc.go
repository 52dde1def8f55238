/*
Package weavetest provides mocks and helpers for testing extensions: fake
authenticators, transactions, handlers and decorators.
*/
package weavetest
