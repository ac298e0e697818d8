// Package compiler rewrites decorated TypeScript classes into classes carrying
// the static definitions the framework runtime reads.
//
// A call to Compile handles one source file in two passes. The first pass
// records the selector of every top-level decorated class. The second pass
// visits each decorated class, reads its decorator metadata and its signal
// members, hands them to a render3.MetadataCompiler and appends the lowered
// definitions as static members:
//
//	@Component({selector: 'app-counter', template: '{{ count() }}'})
//	export class Counter {
//	    count = input(0);
//	}
//
// becomes
//
//	export class Counter {
//	    count = input(0);
//	    static ɵfac = function Counter_Factory(__ngFactoryType__) { ... };
//	    static ɵcmp = i0.ɵɵdefineComponent({ ... });
//	}
//
// Main sub-packages:
//
//   - tsparser: tree-sitter front end reading classes, decorators and members
//   - annotations: decorator metadata, signal detection and resource imports
//   - render3: the metadata compiler producing definitions as IR
//   - output: the IR expressions and statements
//   - translator: lowering of IR into TypeScript syntax
//   - tsast: TypeScript syntax nodes and their printer
//   - pool: hoisted constants shared by the definitions of one file
//   - ml_parser, template_parser: template and binding parsing
//   - config: compiler options and project configuration
//
// Every call is independent: the selector registry and the constant pool
// live for one call only, so files may be compiled in parallel.
package compiler
