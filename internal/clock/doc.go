// Package clock abstracts deferred callbacks so timer-driven code can be
// exercised deterministically.
//
// Real delegates to time.AfterFunc. Fake is a manual clock whose callbacks run
// synchronously inside Advance, in deadline order.
package clock
