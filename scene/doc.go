// Package scene implements the shared scene tree that render instances and
// input grabs are attached to.
//
// The tree is owned by a Root whose children are layer groups ordered
// top-most first. Structural changes are announced with Update, which
// bubbles to the Root and notifies the listeners registered with OnUpdate.
//
// The tree is a single-writer structure: all mutations must happen on the
// goroutine running the event loop.
package scene
