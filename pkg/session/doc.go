/*
Package session hosts the wizards of one page.

A Manager owns a single persistence adapter and hands out one controller per wizard kind.
Controllers are reference counted: every Acquire is paired with a Release, and the controller
is unmounted when its last holder lets go. The next Acquire mounts a fresh controller, which
restores the draft left in the store.
*/
package session
