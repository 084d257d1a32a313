// Package errors provides structured errors for the optimizer.
//
// Every error carries a Code, a user facing message, an optional cause and
// free-form metadata:
//
//	err := errors.NotFoundf("item %q not found", name)
//	err := errors.NotAWeapon(name)
//	err := errors.MalformedRecord(name, cause)
//
// Wrapping keeps the code of the innermost structured error:
//
//	if err := src.Database(ctx); err != nil {
//	    return errors.Wrap(err, "failed to load catalog")
//	}
//
// Callers branch on codes, never on messages:
//
//	switch {
//	case errors.IsNotAWeapon(err):
//	case errors.IsNotFound(err):
//	}
//
// Configs validate with a ValidationBuilder, which yields an InvalidArgument
// error with per-field detail under the "validation_errors" meta key:
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("weapon", cfg.Weapon, vb)
//	errors.ValidateFraction("shrink", cfg.Shrink, vb)
//	return vb.Build()
//
// Infeasible models and empty rankings are not errors. Solvers report them as
// empty results and the CLI prints "no viable builds found".
//
// The CLI maps codes to process exit statuses through Code.ExitCode.
package errors
