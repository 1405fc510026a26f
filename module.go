package ioc

import "go.uber.org/multierr"

// Register invokes each module once with c as its Registrar.
// Errors from all modules are combined; modules after a failing one still run.
func (c *Container) Register(modules ...Module) error {
	var err error
	for _, m := range modules {
		err = multierr.Append(err, m.Register(c))
	}
	return err
}

// RegisterAndOverwrite invokes each module once with c as its Overwriter.
func (c *Container) RegisterAndOverwrite(modules ...OverwriteModule) error {
	var err error
	for _, m := range modules {
		err = multierr.Append(err, m.Register(c))
	}
	return err
}

// Register registers modules into the process-wide container.
func Register(modules ...Module) error {
	return Default().Register(modules...)
}

// RegisterAndOverwrite registers overwrite modules into the process-wide
// container.
func RegisterAndOverwrite(modules ...OverwriteModule) error {
	return Default().RegisterAndOverwrite(modules...)
}

// Clean empties the process-wide container.
func Clean() {
	Default().Clean()
}
