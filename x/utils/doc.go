/*
Package utils provides the decorators that every transaction passes through:
logging, panic recovery and savepoints.
*/
package utils
