// Package recipe defines the immutable package recipe record: identity,
// metadata, pinned requirements and typed build options. A Recipe is built
// once (Default or Load) at workflow start and passed to the steps that
// need it; nothing mutates it afterwards.
package recipe
